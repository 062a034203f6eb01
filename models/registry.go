package models

// All lists every gorm-managed table, in dependency order, for AutoMigrate
// on the test database. Production schema comes from migrations.
func All() []any {
	return []any{
		&User{},
		&Address{},
		&Product{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Review{},
		&ReviewHelpfulVote{},
		&ActivityLog{},
	}
}
