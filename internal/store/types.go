package store

// Wave is one persisted wave.
type Wave struct {
	ID          string  `json:"id"`
	Seq         int64   `json:"seq"`
	Capacity    int     `json:"capacity"`
	TotalWeight int     `json:"total_weight"`
	TotalValue  int     `json:"total_value"`
	CatalogHash string  `json:"catalog_hash"`
	Spawns      []Spawn `json:"spawns"`
}

// Spawn is one enemy of a persisted wave. Index is its position in the
// solver's reconstruction order.
type Spawn struct {
	Index  int     `json:"idx"`
	Enemy  string  `json:"enemy"`
	Weight int     `json:"weight"`
	Value  int     `json:"value"`
	Prefab string  `json:"prefab"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
}

// EnemyTotal aggregates spawns of one enemy across all waves.
type EnemyTotal struct {
	Enemy string `json:"enemy"`
	Count int    `json:"count"`
	Waves int    `json:"waves"`
	Value int    `json:"value"`
}
