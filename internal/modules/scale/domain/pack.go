package domain

// PackSummary describes one contributing electrode pack.
type PackSummary struct {
	Name  string
	Count int
}
