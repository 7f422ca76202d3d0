package seeder

func Defaults() []Seeder {
	return []Seeder{
		PositionsSeeder{},
	}
}
