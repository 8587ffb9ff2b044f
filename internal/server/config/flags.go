package config

import (
	"flag"
	"os"
	"time"

	"github.com/Prathamesh2640/AI-Hackathon/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-l int      loan period, days
//	-f float    daily fine rate, currency units per overdue day
//	-m float    membership fee, currency units
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The token validity flag is accepted as an integer in minutes and the
//     loan period as an integer in days; both are converted to
//     time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-l", "-f", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	loanPeriodDays := fs.Int("l", int(config.LoanPeriod.Hours()/24), "loan_period (in days)")

	fs.Float64Var(&config.DailyFineRate, "f", config.DailyFineRate, "daily fine rate")
	fs.Float64Var(&config.MembershipFee, "m", config.MembershipFee, "membership fee")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.LoanPeriod = time.Duration(*loanPeriodDays) * 24 * time.Hour
}
