package models

type Flags struct {
	Mode string `short:"m" long:"mode" env:"MODE" required:"true" description:"The mode Local Dex is running in: cli/docker" default:"cli"`
	Seed bool   `short:"s" long:"seed" env:"SEED" description:"Run the dataset ingestion pipeline and exit"`
}
