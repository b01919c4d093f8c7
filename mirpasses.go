package idlc

// VerifyInterfaceCollisions is the MIR pass that walks each interface's
// base chain and fatals if any const/error ident or any function ident
// collides with one from elsewhere in the chain. Grounded on
// idlc_mir_passes/src/interface_verifier.rs::InterfaceVerifier.
func VerifyInterfaceCollisions(mir *MIR) *Diagnostic {
	for _, iface := range mir.Interfaces {
		if diag := checkChainCollisions(iface); diag != nil {
			return diag
		}
	}
	return nil
}

type collisionWitness struct {
	ident Ident
	owner string
}

func checkChainCollisions(iface *MIRInterface) *Diagnostic {
	constAndErrorNames := make(map[string]collisionWitness)
	functionNames := make(map[string]collisionWitness)

	for _, link := range iface.Iter() {
		for _, c := range link.Consts {
			if prior, dup := constAndErrorNames[c.Ident.Name]; dup {
				return fatalAt(KindDuplicate, link.OriginPath, c.Ident.Span,
					"interface %s: const %s collides with %s declared in %s",
					iface.Ident.Name, c.Ident.Name, prior.ident.Name, prior.owner)
			}
			constAndErrorNames[c.Ident.Name] = collisionWitness{ident: c.Ident, owner: link.Ident.Name}
		}
		for _, e := range link.Errors {
			if prior, dup := constAndErrorNames[e.Ident.Name]; dup {
				return fatalAt(KindDuplicate, link.OriginPath, e.Ident.Span,
					"interface %s: error %s collides with %s declared in %s",
					iface.Ident.Name, e.Ident.Name, prior.ident.Name, prior.owner)
			}
			constAndErrorNames[e.Ident.Name] = collisionWitness{ident: e.Ident, owner: link.Ident.Name}
		}
		for _, fn := range link.Functions {
			if prior, dup := functionNames[fn.Ident.Name]; dup {
				return fatalAt(KindDuplicate, link.OriginPath, fn.Ident.Span,
					"interface %s: method %s collides with %s declared in %s",
					iface.Ident.Name, fn.Ident.Name, prior.ident.Name, prior.owner)
			}
			functionNames[fn.Ident.Name] = collisionWitness{ident: fn.Ident, owner: link.Ident.Name}
		}
	}
	return nil
}
