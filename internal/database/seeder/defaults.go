package seeder

func Defaults() []Seeder {
	return []Seeder{
		LocationsSeeder{},
		DemoUsersSeeder{},
	}
}
