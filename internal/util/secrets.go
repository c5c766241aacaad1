package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"portfoliobias/internal/domain"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type StoreKind string

const (
	StoreS3       StoreKind = "s3"
	StorePostgres StoreKind = "postgres"
	StoreMemory   StoreKind = "memory"
)

type Secrets struct {
	ChatGPTApiKey string            `json:"gpt"`
	Store         StoreKind         `json:"store"`
	Aws           AwsSecrets        `json:"aws"`
	Db            DbSecrets         `json:"db"`
	Port          int               `json:"port"`
	Benchmarks    *BenchmarkSecrets `json:"benchmarks,omitempty"`
}

type AwsSecrets struct {
	Region        string `json:"region"`
	ResultsBucket string `json:"resultsBucket"`
	UploadsBucket string `json:"uploadsBucket"`
}

type DbSecrets struct {
	Url       string `json:"url"`
	Host      string `json:"host"`
	User      string `json:"user"`
	Port      string `json:"port"`
	Password  string `json:"password"`
	Database  string `json:"database"`
	EnableSsl bool   `json:"enableSsl"`
}

// BenchmarkSecrets overrides any of the default benchmark values.
type BenchmarkSecrets struct {
	Sector         domain.Distribution `json:"sector,omitempty"`
	Size           domain.Distribution `json:"size,omitempty"`
	MomentumReturn *float64            `json:"momentumReturn,omitempty"`
}

func (t DbSecrets) ToConnectionStr() string {
	if t.Url != "" {
		return t.Url
	}
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

func secretsFile() string {
	switch strings.ToLower(os.Getenv("BIAS_ENV")) {
	case "dev":
		return "secrets-dev.json"
	case "test":
		return "secrets-test.json"
	}
	if f := os.Getenv("BIAS_SECRETS_FILE"); f != "" {
		return f
	}
	return "secrets.json"
}

// LoadSecrets reads the secrets file for BIAS_ENV, then lets environment
// variables (optionally from a .env file) override it. A missing secrets
// file is fine when everything comes from the environment, e.g. on lambda.
func LoadSecrets() (*Secrets, error) {
	// no .env is the normal case outside local dev
	_ = godotenv.Load()

	secrets := Secrets{}
	f, err := os.ReadFile(secretsFile())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not open secrets file: %w", err)
	}
	if err == nil {
		err = json.Unmarshal(f, &secrets)
		if err != nil {
			return nil, fmt.Errorf("failed to parse secrets file: %w", err)
		}
	}

	err = secrets.applyEnv()
	if err != nil {
		return nil, err
	}

	if secrets.Store == "" {
		secrets.Store = StoreS3
	}
	if secrets.Aws.Region == "" {
		secrets.Aws.Region = "us-east-1"
	}
	if secrets.Port == 0 {
		secrets.Port = 3009
	}

	return &secrets, nil
}

func (s *Secrets) applyEnv() error {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		s.ChatGPTApiKey = v
	}
	if v := os.Getenv("BIAS_STORE"); v != "" {
		s.Store = StoreKind(strings.ToLower(v))
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		s.Aws.Region = v
	}
	if v := os.Getenv("BIAS_RESULTS_BUCKET"); v != "" {
		s.Aws.ResultsBucket = v
	}
	if v := os.Getenv("BIAS_UPLOADS_BUCKET"); v != "" {
		s.Aws.UploadsBucket = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		s.Db.Url = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		s.Port = port
	}
	return nil
}

// LoadBenchmarks builds the process-wide benchmark values. Call it once at
// startup and pass the result down.
func (s Secrets) LoadBenchmarks() domain.Benchmarks {
	defaults := domain.DefaultBenchmarks()
	if s.Benchmarks == nil {
		return defaults
	}

	sector := defaults.Sector()
	if len(s.Benchmarks.Sector) > 0 {
		sector = s.Benchmarks.Sector
	}
	size := defaults.Size()
	if len(s.Benchmarks.Size) > 0 {
		size = s.Benchmarks.Size
	}
	momentum := defaults.MomentumReturn()
	if s.Benchmarks.MomentumReturn != nil {
		momentum = *s.Benchmarks.MomentumReturn
	}

	return domain.NewBenchmarks(sector, size, momentum)
}
