// Package validation checks and canonicalises argument values against
// declared parameter types.
//
// Types form a single-inheritance chain rooted at the abstract Ty. A
// concrete type first runs its parent's validation (unless the parent is
// abstract) and then applies its own rule to the parent's canonical
// result, so a subtype can never bypass the checks of its ancestors:
//
//	Ty (abstract)
//	└── Text          flattened text; no commands or aliases
//	    ├── Tag       no commas
//	    ├── Int       base-10 integer
//	    ├── Bool      true/false/yes/no
//	    └── Choice:…  one of the listed options
//
// Error messages name the declared type, e.g. a command inside a Tag
// parameter reports "Parameters of type Tag may not contain commands".
package validation
