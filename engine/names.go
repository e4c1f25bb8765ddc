package engine

import "github.com/tetratelabs/wazero/api"

// Boundary symbol names exported by every conforming engine artifact.
const (
	SymCreate       = "temporal_planner_create"
	SymDestroy      = "temporal_planner_destroy"
	SymSolveFiles   = "temporal_planner_solve_files"
	SymSolveContent = "temporal_planner_solve_content"
	SymGetVersion   = "temporal_planner_get_version"
	SymFreeString   = "temporal_planner_free_string"
)

// Allocator exports are not part of the planner boundary proper, but the
// host needs guest scratch memory to pass strings. Engines built from
// different toolchains export the allocator pair under different names,
// so resolution walks a fallback chain.
var (
	allocNames = []string{"alloc", "malloc", "allocate"}
	freeNames  = []string{"free", "deallocate", "cabi_free"}
)

// signature is a core-wasm function type required of a boundary export.
type signature struct {
	params  []api.ValueType
	results []api.ValueType
}

var (
	i32 = api.ValueTypeI32

	// requiredExports maps each boundary symbol to its C-convention type.
	// Pointers and handles are i32 linear-memory addresses.
	requiredExports = map[string]signature{
		SymCreate:       {params: nil, results: []api.ValueType{i32}},
		SymDestroy:      {params: []api.ValueType{i32}, results: nil},
		SymSolveFiles:   {params: []api.ValueType{i32, i32, i32, i32}, results: []api.ValueType{i32}},
		SymSolveContent: {params: []api.ValueType{i32, i32, i32, i32}, results: []api.ValueType{i32}},
		SymGetVersion:   {params: nil, results: []api.ValueType{i32}},
		SymFreeString:   {params: []api.ValueType{i32}, results: nil},
	}

	allocSignature = signature{params: []api.ValueType{i32}, results: []api.ValueType{i32}}
	freeSignature  = signature{params: []api.ValueType{i32}, results: nil}
)

func typesEqual(a, b []api.ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s signature) matches(def api.FunctionDefinition) bool {
	return typesEqual(def.ParamTypes(), s.params) && typesEqual(def.ResultTypes(), s.results)
}

// String renders the signature in "(i32,i32)->i32" form for diagnostics.
func (s signature) String() string {
	return formatType(s.params, s.results)
}

func formatType(params, results []api.ValueType) string {
	out := "("
	for i, p := range params {
		if i > 0 {
			out += ","
		}
		out += api.ValueTypeName(p)
	}
	out += ")"
	if len(results) > 0 {
		out += "->"
		for i, r := range results {
			if i > 0 {
				out += ","
			}
			out += api.ValueTypeName(r)
		}
	}
	return out
}
