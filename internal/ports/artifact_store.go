package ports

import "github.com/PhysCorp/MarbleMachine/internal/domain"

// ArtifactStore persists run reports for reproducibility.
type ArtifactStore interface {
	SaveReport(report domain.RunReport) (id string, err error)
}
