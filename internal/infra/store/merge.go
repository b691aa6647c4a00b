package store

import "reflect"

// appendOnlyArrays are the document fields whose arrays behave as
// append-only sets at the storage boundary: two writers adding different
// badges (or cosmetics) both survive a merge. Every other array is a
// plain value and merges last-write-wins — failedQuestions must be able
// to shrink when a question is mastered, and examAttempts is an ordered
// history where two identical rows (the same blank failing exam twice in
// one day) are distinct attempts, so neither may dedup.
var appendOnlyArrays = map[string]bool{
	"badges":  true,
	"avatars": true,
	"themes":  true,
	"titles":  true,
}

// deepMerge merges src into a copy of dst and returns it. Maps merge
// recursively, append-only arrays union (order kept), everything else is
// last-write-wins.
func deepMerge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, sv := range src {
		dv, exists := out[k]
		if !exists {
			out[k] = sv
			continue
		}
		dm, dok := dv.(map[string]any)
		sm, sok := sv.(map[string]any)
		if dok && sok {
			out[k] = deepMerge(dm, sm)
			continue
		}
		if appendOnlyArrays[k] {
			ds, dsok := dv.([]any)
			ss, ssok := sv.([]any)
			if dsok && ssok {
				out[k] = unionSlice(ds, ss)
				continue
			}
		}
		out[k] = sv
	}
	return out
}

func unionSlice(dst, src []any) []any {
	out := append([]any(nil), dst...)
	for _, sv := range src {
		if !containsElem(out, sv) {
			out = append(out, sv)
		}
	}
	return out
}

// containsElem uses DeepEqual because decoded JSON elements may be maps,
// which are not comparable with ==.
func containsElem(s []any, v any) bool {
	for _, e := range s {
		if reflect.DeepEqual(e, v) {
			return true
		}
	}
	return false
}
