// Package memory holds concurrency-safe in-memory implementations of the
// repository ports. Each store guards its map with an RWMutex and works on
// copies, so a record handed to a caller can be mutated freely and only
// becomes visible once saved back.
//
// Exclusion across a read-mutate-save sequence is the lock manager's job;
// the stores only guarantee that individual operations are safe.
package memory

func paginate(total, page, size int) (start, end int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	start = (page - 1) * size
	if start > total {
		start = total
	}
	end = start + size
	if end > total {
		end = total
	}
	return start, end
}
