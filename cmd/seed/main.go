package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"videorental/internal/app"
	"videorental/internal/config"
	"videorental/internal/database"
	"videorental/internal/domain"
	"videorental/internal/domain/catalog"
	"videorental/internal/domain/client"
	"videorental/internal/domain/employee"
	"videorental/internal/domain/inventory"
	"videorental/internal/domain/rental"
	"videorental/internal/domain/tariff"
	"videorental/internal/logger"
	"videorental/internal/pkg/apperr"
)

// seed fills an empty database with a demo store: two employees, a small
// catalog with cassettes, tariffs, clients and a couple of rentals.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Connect(cfg.Database.URL, cfg.Log.Level)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	a, err := app.New(cfg, db)
	if err != nil {
		logger.Error("app wiring failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if _, err := a.Employees.GetByLogin(ctx, "admin"); err == nil {
		logger.Info("database already seeded, nothing to do")
		return
	} else if !apperr.IsNotFound(err) {
		logger.Error("seed check failed", "error", err)
		os.Exit(1)
	}

	if err := seed(ctx, a); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed completed", "admin", "admin / admin123", "cashier", "cashier / cashier123")
}

func seed(ctx context.Context, a *app.App) error {
	// ================== EMPLOYEES ==================
	admin, err := a.Employees.Create(ctx, 0, employee.CreateEmployeeRequest{
		FullName: "Store Administrator",
		Login:    "admin",
		Password: "admin123",
		Role:     employee.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	cashier, err := a.Employees.Create(ctx, admin.ID, employee.CreateEmployeeRequest{
		FullName: "Anna Petrova",
		Login:    "cashier",
		Password: "cashier123",
		Phone:    "+7 900 100 20 30",
		Role:     employee.RoleCashier,
	})
	if err != nil {
		return fmt.Errorf("create cashier: %w", err)
	}

	// ================== CATALOG ==================
	genreIDs := map[string]int64{}
	for _, name := range []string{"Action", "Comedy", "Drama", "Sci-Fi", "Horror"} {
		g, err := a.Catalog.CreateGenre(ctx, admin.ID, catalog.GenreRequest{Name: name})
		if err != nil {
			return fmt.Errorf("create genre %s: %w", name, err)
		}
		genreIDs[name] = g.ID
	}

	movies := []catalog.CreateMovieRequest{
		{Title: "Terminator 2: Judgment Day", Director: "James Cameron", Year: 1991, Duration: 137, Rating: catalog.RatingR, GenreIDs: []int64{genreIDs["Action"], genreIDs["Sci-Fi"]}},
		{Title: "Back to the Future", Director: "Robert Zemeckis", Year: 1985, Duration: 116, Rating: catalog.RatingPG, GenreIDs: []int64{genreIDs["Comedy"], genreIDs["Sci-Fi"]}},
		{Title: "Die Hard", Director: "John McTiernan", Year: 1988, Duration: 132, Rating: catalog.RatingR, GenreIDs: []int64{genreIDs["Action"]}},
		{Title: "Ghostbusters", Director: "Ivan Reitman", Year: 1984, Duration: 105, Rating: catalog.RatingPG, GenreIDs: []int64{genreIDs["Comedy"]}},
		{Title: "The Shining", Director: "Stanley Kubrick", Year: 1980, Duration: 146, Rating: catalog.RatingR, GenreIDs: []int64{genreIDs["Horror"], genreIDs["Drama"]}},
	}

	conditions := []domain.Condition{domain.ConditionExcellent, domain.ConditionGood, domain.ConditionFair}
	var unitIDs []int64
	for i, req := range movies {
		m, err := a.Catalog.CreateMovie(ctx, admin.ID, req)
		if err != nil {
			return fmt.Errorf("create movie %q: %w", req.Title, err)
		}
		for j := 0; j < 2; j++ {
			price := decimal.NewFromInt(int64(800 + 100*i))
			format := inventory.FormatVHS
			if j == 1 && i%2 == 0 {
				format = inventory.FormatBetamax
			}
			u, err := a.Inventory.Create(ctx, admin.ID, inventory.CreateUnitRequest{
				MovieID:       m.ID,
				Format:        format,
				Condition:     conditions[(i+j)%len(conditions)],
				PurchasePrice: &price,
			})
			if err != nil {
				return fmt.Errorf("create cassette for %q: %w", req.Title, err)
			}
			unitIDs = append(unitIDs, u.ID)
		}
	}

	// ================== TARIFFS ==================
	standard, err := a.Tariffs.Create(ctx, admin.ID, tariff.CreateTariffRequest{
		Name:            "Standard",
		Description:     "Daily rate with discounts for longer rentals",
		BasePricePerDay: decimal.NewFromInt(100),
		DurationDiscounts: []tariff.DiscountInput{
			{MinDays: 3, Discount: decimal.NewFromInt(5)},
			{MinDays: 7, Discount: decimal.NewFromInt(10)},
		},
		IsDefault: true,
	})
	if err != nil {
		return fmt.Errorf("create standard tariff: %w", err)
	}
	if _, err := a.Tariffs.Create(ctx, admin.ID, tariff.CreateTariffRequest{
		Name:              "Weekend",
		BasePricePerDay:   decimal.NewFromInt(150),
		DurationDiscounts: []tariff.DiscountInput{{MinDays: 2, Discount: decimal.NewFromInt(15)}},
		AllowedGenreIDs:   []int64{genreIDs["Action"], genreIDs["Comedy"]},
	}); err != nil {
		return fmt.Errorf("create weekend tariff: %w", err)
	}

	// ================== CLIENTS ==================
	people := []client.CreateClientRequest{
		{FullName: "Ivan Smirnov", Phone: "+7 901 000 00 01", Email: "ivan@example.com"},
		{FullName: "Olga Kuznetsova", Phone: "+7 901 000 00 02"},
		{FullName: "Sergey Volkov", Phone: "+7 901 000 00 03", Notes: "prefers Betamax"},
	}
	var clientIDs []int64
	for _, req := range people {
		c, err := a.Clients.Create(ctx, cashier.ID, req)
		if err != nil {
			return fmt.Errorf("create client %q: %w", req.FullName, err)
		}
		clientIDs = append(clientIDs, c.ID)
	}

	// ================== RENTALS ==================
	for i, days := range []int{3, 7} {
		if _, err := a.Rentals.Issue(ctx, rental.IssueInput{
			ClientID:    clientIDs[i],
			MediaUnitID: unitIDs[i*2],
			TariffID:    standard.ID,
			Days:        days,
			StaffID:     cashier.ID,
		}); err != nil {
			return fmt.Errorf("issue rental %d: %w", i+1, err)
		}
	}

	logger.Info("seeded",
		"genres", len(genreIDs),
		"movies", len(movies),
		"cassettes", len(unitIDs),
		"clients", len(clientIDs),
		"at", time.Now().UTC().Format(time.RFC3339),
	)
	return nil
}
