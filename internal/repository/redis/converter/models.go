package converter

type ProductInfoRedisModel struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	BasePrice int64  `json:"base_price"`
}
