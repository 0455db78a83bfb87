package metrics

// IncrementEntityCreated increments the entity creation counter for a domain
func (m *Metrics) IncrementEntityCreated(domain string) {
	m.safeExecute("IncrementEntityCreated", func() {
		m.EntitiesCreatedTotal.WithLabelValues(domain).Inc()
	})
}

// IncrementCommentCreated increments the comment creation counter for a domain
func (m *Metrics) IncrementCommentCreated(domain string) {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentsCreatedTotal.WithLabelValues(domain).Inc()
	})
}

// IncrementCascadeDelete increments the cascade delete counter for a domain
func (m *Metrics) IncrementCascadeDelete(domain string) {
	m.safeExecute("IncrementCascadeDelete", func() {
		m.CascadeDeletesTotal.WithLabelValues(domain).Inc()
	})
}

// IncrementStoreBusy increments the lock-wait rejection counter
func (m *Metrics) IncrementStoreBusy() {
	m.safeExecute("IncrementStoreBusy", func() {
		m.StoreBusyTotal.Inc()
	})
}

// AddOrphansSwept adds the number of orphaned comments removed by a sweep
func (m *Metrics) AddOrphansSwept(count int) {
	m.safeExecute("AddOrphansSwept", func() {
		m.OrphansSweptTotal.Add(float64(count))
	})
}
