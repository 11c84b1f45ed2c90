package record

// RunRecord is one completed search run from a tabular NAS benchmark:
// the architecture the search settled on, the accuracy it achieved, and
// what the run cost in time or compute units.
type RunRecord struct {
	ArchitectureID string  `json:"architecture_id"`
	Accuracy       float64 `json:"accuracy"`
	Cost           float64 `json:"cost"`
}

// Sample is the ordered set of runs for one experiment configuration,
// e.g. "30 runs of regularized evolution on NATS-Bench". Order carries no
// statistical meaning but is preserved so plots reproduce exactly.
type Sample []RunRecord
