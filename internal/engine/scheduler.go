package engine

// ScheduleWork rebalances idle members onto understaffed production
// structures. Members with a matching role are placed first, then any
// idle member that meets the work action's skill requirements.
func (s *Simulation) ScheduleWork() {
	for _, b := range s.Registry.Production() {
		if !b.Understaffed() {
			continue
		}

		// Pass 1: role matches.
		for _, m := range s.Members {
			if !b.Understaffed() {
				break
			}
			if m.Work != nil || m.Role == nil || m.Role.Worksite != b.Def.Name {
				continue
			}
			if b.AssignWorker(m.ID) {
				m.Work = b
			}
		}

		// Pass 2: any idle member that qualifies.
		for _, m := range s.Members {
			if !b.Understaffed() {
				break
			}
			if m.Work != nil {
				continue
			}
			if action, ok := s.Cfg.Action(b.Def.WorkAction); ok && !m.Skills.MeetsRequirements(action) {
				continue
			}
			if b.AssignWorker(m.ID) {
				m.Work = b
			}
		}
	}
}
