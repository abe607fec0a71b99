package domain

// CartItem — позиция корзины, передаётся в запросе расчёта и нигде не хранится.
type CartItem struct {
	ProductID int64
	Quantity  int32
}

// TallyQuantities суммирует количество по каждому продукту по всем позициям,
// включая дубли одного и того же продукта.
func TallyQuantities(items []CartItem) map[int64]int32 {
	counts := make(map[int64]int32, len(items))
	for _, item := range items {
		counts[item.ProductID] += item.Quantity
	}

	return counts
}
