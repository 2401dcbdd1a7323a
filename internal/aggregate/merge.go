package aggregate

// MergePartitions flattens per-workspace result sets into one collection,
// first-seen wins. Workspace ids are consumed in the scope order established
// by ResolveScope, never in fetch completion order, so output order is
// reproducible across runs. Within a workspace, store fetch order is kept.
//
// Duplicates are legitimate: an owner's all-workspaces sweep can see the same
// record from more than one partition query in a single refresh. Later
// occurrences are dropped. The second return value is the number dropped.
//
// No sorting happens here; callers order the merged collection afterwards.
func MergePartitions[T any](r *PartitionResult[T], keyOf func(T) string) ([]T, int) {
	total := 0
	for _, items := range r.Items {
		total += len(items)
	}

	seen := make(map[string]struct{}, total)
	merged := make([]T, 0, total)
	dropped := 0

	for _, ws := range r.order {
		for _, item := range r.Items[ws] {
			key := keyOf(item)
			if _, ok := seen[key]; ok {
				dropped++
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, item)
		}
	}
	return merged, dropped
}
