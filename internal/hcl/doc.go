// Package hcl provides the HCL implementation of config.Loader.
//
// A configuration file sets any of the build attributes at its top level:
//
//	entry      = "src/index.js"
//	output     = "${env.OUT_DIR}/bundle.js"
//	base_dir   = "src"
//	resolve    = "importer"
//	instancing = "cached"
//	cycles     = "reject"
//	scanner    = "lexical"
//	verify     = true
//
// Expressions are evaluated with a single variable, env, holding the process
// environment overlaid with the variables of a .env file next to the
// configuration, when one exists. Relative paths are resolved against the
// configuration's directory. A directory may be given instead of a file, in
// which case every .hcl file below it is merged in lexical path order.
package hcl
