package gen

import _ "embed"

// The runtime library is a stable ABI of every generated program: the
// function names and argument orders below must not change.

//go:embed runtime.awk
var runtimeLib string

// runtimeGawk holds helpers that need gawk extensions (match with a
// subgroup array).
//
//go:embed runtime_gawk.awk
var runtimeGawk string
