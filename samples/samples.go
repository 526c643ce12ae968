// ABOUTME: Fixed catalog of named pseudocode snippets used to pre-populate the analysis input.
// ABOUTME: Samples cover the common complexity classes from O(log n) to O(2^n).
package samples

import "strings"

// Sample is one named pseudocode snippet from the built-in catalog.
type Sample struct {
	Name        string
	Description string
	Code        string
}

// catalog is ordered roughly by growth rate.
var catalog = []Sample{
	{
		Name:        "binary-search",
		Description: "Iterative binary search over a sorted array",
		Code: `BINARY-SEARCH(A, n, target)
  lo = 1
  hi = n
  WHILE lo <= hi
    mid = floor((lo + hi) / 2)
    IF A[mid] == target
      RETURN mid
    ELSE IF A[mid] < target
      lo = mid + 1
    ELSE
      hi = mid - 1
  RETURN -1`,
	},
	{
		Name:        "linear-scan",
		Description: "Single pass maximum of an array",
		Code: `FIND-MAX(A, n)
  best = A[1]
  FOR i = 2 TO n
    IF A[i] > best
      best = A[i]
  RETURN best`,
	},
	{
		Name:        "merge-sort",
		Description: "Top-down merge sort",
		Code: `MERGE-SORT(A, lo, hi)
  IF lo >= hi
    RETURN
  mid = floor((lo + hi) / 2)
  MERGE-SORT(A, lo, mid)
  MERGE-SORT(A, mid + 1, hi)
  MERGE(A, lo, mid, hi)`,
	},
	{
		Name:        "bubble-sort",
		Description: "Bubble sort with early exit",
		Code: `BUBBLE-SORT(A, n)
  REPEAT
    swapped = false
    FOR i = 1 TO n - 1
      IF A[i] > A[i + 1]
        SWAP A[i], A[i + 1]
        swapped = true
  UNTIL swapped == false`,
	},
	{
		Name:        "matrix-multiply",
		Description: "Naive square matrix multiplication",
		Code: `MATRIX-MULTIPLY(X, Y, n)
  FOR i = 1 TO n
    FOR j = 1 TO n
      C[i][j] = 0
      FOR k = 1 TO n
        C[i][j] = C[i][j] + X[i][k] * Y[k][j]
  RETURN C`,
	},
	{
		Name:        "fibonacci-naive",
		Description: "Exponential recursive Fibonacci",
		Code: `FIB(n)
  IF n <= 1
    RETURN n
  RETURN FIB(n - 1) + FIB(n - 2)`,
	},
}

// Catalog returns the full sample catalog in display order.
func Catalog() []Sample {
	out := make([]Sample, len(catalog))
	copy(out, catalog)
	return out
}

// Find returns the sample with the given name (case-insensitive), or false.
func Find(name string) (Sample, bool) {
	for _, s := range catalog {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Sample{}, false
}

// Names returns the catalog's sample names in display order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, s := range catalog {
		names[i] = s.Name
	}
	return names
}
