package coaching

// Industry benchmarks the analyzer compares against. Fixed constants, not
// runtime configuration.
const (
	benchmarkInsuranceRate      = 75.0
	benchmarkUpgradeRate        = 40.0
	benchmarkConsistencyScore   = 80.0
	benchmarkAvgUpgradePrice    = 150.0
	benchmarkRevenuePerContract = 200.0
)

// Average revenue of a single insurance sale, used for potential-gain
// estimates in insight impact lines.
const avgInsuranceValue = 50.0
