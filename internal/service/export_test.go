package service

// IsCreating открывает флаг создания контента для тестов пакета service_test.
func (w *Workflow) IsCreating() bool {
	return w.creating.Load()
}
