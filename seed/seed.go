package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/ninja-software/terror/v2"
)

type Seeder struct {
	Conn *pgxpool.Pool
}

// NewSeeder returns a new Seeder
func NewSeeder(conn *pgxpool.Pool) *Seeder {
	s := &Seeder{conn}
	return s
}

// Run for database spinup
func (s *Seeder) Run(ctx context.Context) error {
	fmt.Println("Seeding products")
	err := s.Products(ctx)
	if err != nil {
		return terror.Error(err, "seed products failed")
	}

	fmt.Println("Seed complete")
	return nil
}
