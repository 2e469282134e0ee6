package cmd

type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	TaskCeiling   int
	MinDistanceKm float64
	MaxDistanceKm float64
}
