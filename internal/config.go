package internal

type Config struct {
	BadgerFilepath      string `env:"BADGER_FILEPATH,required=true"`
	BadgerInMemory      bool   `env:"BADGER_IN_MEMORY"`
	LogLevel            string `env:"LOG_LEVEL,required=true"`
	MessagePageSize     int    `env:"MESSAGE_PAGE_SIZE,required=true"`
	AllMessagesPageSize int    `env:"ALL_MESSAGES_PAGE_SIZE,required=true"`
}
