package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// UnitPrice is the price of one distinct job category, used to cost
	// orders and reserve funds on acceptance.
	UnitPrice int

	// CityScopedRegions lists the regions where contractor matching narrows
	// to the order's city instead of the whole region.
	CityScopedRegions []string

	// OrderStaleAfter is how long an order may wait unaccepted before the
	// rebroadcast job re-announces it.
	OrderStaleAfter time.Duration

	TelegramBotToken string
}
