package orchestrator

import (
	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/request"
)

// Artifacts decodes raw and generates area without emitting. For AreaAll the
// areas run one after another and the first failure returns nothing.
func (o *Orchestrator) Artifacts(area Area, raw []byte) ([]artifact.Artifact, error) {
	req, err := request.Decode(raw, o.decodeOpts...)
	if err != nil {
		return nil, err
	}
	if area != AreaAll {
		return o.Generate(area, req)
	}

	var all []artifact.Artifact
	for _, a := range Areas {
		out, err := o.Generate(a, req.Clone())
		if err != nil {
			return nil, err
		}
		all = append(all, out...)
	}
	return all, nil
}

// RunAPI generates the model, controller, route and summary endpoint.
func (o *Orchestrator) RunAPI(raw []byte) ([]artifact.Artifact, error) {
	return o.Artifacts(AreaAPI, raw)
}

// RunRedux generates the RTK Query slice.
func (o *Orchestrator) RunRedux(raw []byte) ([]artifact.Artifact, error) {
	return o.Artifacts(AreaRedux, raw)
}

// RunStore generates the Zustand store and its types.
func (o *Orchestrator) RunStore(raw []byte) ([]artifact.Artifact, error) {
	return o.Artifacts(AreaStore, raw)
}

// RunClientView generates the client page and its components.
func (o *Orchestrator) RunClientView(raw []byte) ([]artifact.Artifact, error) {
	return o.Artifacts(AreaClientView, raw)
}

// RunSSRView generates the server-rendered page and loader.
func (o *Orchestrator) RunSSRView(raw []byte) ([]artifact.Artifact, error) {
	return o.Artifacts(AreaSSRView, raw)
}
