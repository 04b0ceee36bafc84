package cmd

// Config carries everything the composition root needs to wire the
// application. Values come from the environment, with a few overridable
// from the command line.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	SmsAPIURL  string
	SmsAPIAuth string
	SmsSender  string

	KafkaHost        string
	KafkaStatusTopic string

	StaleThresholdMinutes int
}
