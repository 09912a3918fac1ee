package repository

// Stores agrupa los repositorios atados a una misma transacción.
type Stores struct {
	Products    ProductRepository
	Transitions StockTransitionRepository
	Returns     ReturnRepository
	Orders      OrderRepository
}
