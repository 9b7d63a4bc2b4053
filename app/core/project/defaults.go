package project

func figRef(id int) *int {
	return &id
}

// DefaultState is the seed project plan used when no data file exists.
func DefaultState() *State {
	return &State{
		ProjectStart: "2026-01-17",
		Deadline:     "2026-03-17",
		Tasks: []Task{
			{ID: "mag-quant", Title: "Quantify MAG Western blot (ImageJ)", Week: 1, Priority: "high", Figure: figRef(2)},
			{ID: "cut-sections", Title: "Cut IHC sections from fixed tissue", Week: 1, Priority: "medium", Figure: figRef(3)},
			{ID: "prep-massspec", Title: "Prepare brain samples for mass spec", Week: 1, Priority: "critical", Figure: figRef(2)},
			{ID: "send-massspec", Title: "Send samples to mass spec core", Week: 1, Priority: "critical", Figure: figRef(2), Notes: "BOTTLENECK"},
			{ID: "olig2-stain", Title: "Olig2 or CC1 IHC staining", Week: 2, Priority: "high", Figure: figRef(3)},
			{ID: "degenerotag", Title: "DegeneroTag / FluoroJade staining", Week: 2, Priority: "high", Figure: figRef(3)},
			{ID: "ihc-imaging", Title: "Image all IHC sections", Week: 3, Priority: "medium", Figure: figRef(3)},
			{ID: "ihc-quant-start", Title: "Begin IHC quantification", Week: 3, Priority: "medium", Figure: figRef(3)},
			{ID: "recovery-plp", Title: "Western blot: PLP on Recovery tissue", Week: 4, Priority: "high", Figure: figRef(4)},
			{ID: "recovery-mag", Title: "Western blot: MAG on Recovery tissue", Week: 4, Priority: "high", Figure: figRef(4)},
			{ID: "recovery-quant", Title: "Quantify recovery Western blots", Week: 4, Priority: "medium", Figure: figRef(4)},
			{ID: "recovery-stats", Title: "Statistics: Non-SD vs SD vs Recovery", Week: 4, Priority: "medium", Figure: figRef(4)},
			{ID: "ihc-quant-complete", Title: "Complete all IHC quantification", Week: 5, Priority: "high", Figure: figRef(3)},
			{ID: "massspec-analyze", Title: "Analyze mass spec results", Week: 5, Priority: "high", Figure: figRef(2)},
			{ID: "all-stats", Title: "Statistical analysis on all datasets", Week: 5, Priority: "high"},
			{ID: "fig1-final", Title: "Finalize Figure 1: EM Phenotype", Week: 6, Priority: "high", Figure: figRef(1)},
			{ID: "fig2-final", Title: "Finalize Figure 2: Proteins + Lipids", Week: 6, Priority: "high", Figure: figRef(2)},
			{ID: "fig3-final", Title: "Finalize Figure 3: Cellular Response", Week: 7, Priority: "high", Figure: figRef(3)},
			{ID: "fig4-final", Title: "Finalize Figure 4: Recovery Failure", Week: 7, Priority: "high", Figure: figRef(4)},
			{ID: "write-legends", Title: "Write figure legends", Week: 7, Priority: "medium"},
			{ID: "write-manuscript", Title: "Complete manuscript draft", Week: 8, Priority: "critical"},
			{ID: "coauthor-review", Title: "Circulate to co-authors", Week: 8, Priority: "high"},
			{ID: "submit", Title: "SUBMIT PAPER", Week: 8, Priority: "critical"},
		},
		Figures: []Figure{
			{ID: 1, Title: "EM Phenotype", Status: "complete"},
			{ID: 2, Title: "Proteins + Lipids", Status: "in_progress"},
			{ID: 3, Title: "Cellular Response", Status: "not_started"},
			{ID: 4, Title: "Recovery Failure", Status: "partial"},
		},
		Results:     []Result{},
		ChatHistory: []ChatTurn{},
	}
}
