package kmod

// ModuleModel is the merged view of one module: its live parameters annotated
// with descriptions and persisted overrides. It is built wholesale and
// replaced wholesale; nothing mutates it after construction.
type ModuleModel struct {
	Module string
	Params []ParameterRecord
}

// BuildModel fans out to the three readers and joins their results on
// parameter name. Live presence is authoritative: a name known only to
// modinfo or modprobe.d never produces a record. Every source failure
// degrades to an empty or default contribution, so BuildModel cannot fail.
func (s *Source) BuildModel(module string) ModuleModel {
	descs := s.ReadDescriptions(module)
	persisted := s.ReadPersistedOverrides(module)
	params := s.ReadParameters(module)

	for i := range params {
		desc, ok := descs[params[i].Name]
		if !ok {
			desc = NoDescription
		}
		params[i].Description = desc
		params[i].Persisted = persisted[params[i].Name]
	}

	return ModuleModel{Module: module, Params: params}
}
