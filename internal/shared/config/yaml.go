package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the optional config.yaml layout.
type fileConfig struct {
	Server struct {
		Port string `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	LLM struct {
		OpenAI struct {
			APIKey  string `yaml:"apiKey"`
			Model   string `yaml:"model"`
			BaseURL string `yaml:"baseURL"`
		} `yaml:"openai"`
		Groq struct {
			APIKey  string `yaml:"apiKey"`
			Model   string `yaml:"model"`
			BaseURL string `yaml:"baseURL"`
		} `yaml:"groq"`
		TimeoutSeconds int `yaml:"timeoutSeconds"`
	} `yaml:"llm"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	Archive struct {
		Kind  string `yaml:"kind"`
		Local struct {
			Dir string `yaml:"dir"`
		} `yaml:"local"`
		S3 struct {
			Region string `yaml:"region"`
			Bucket string `yaml:"bucket"`
			Prefix string `yaml:"prefix"`
		} `yaml:"s3"`
		Minio struct {
			Endpoint  string `yaml:"endpoint"`
			AccessKey string `yaml:"accessKey"`
			SecretKey string `yaml:"secretKey"`
			Bucket    string `yaml:"bucketName"`
			UseSSL    *bool  `yaml:"useSSL"`
		} `yaml:"minio"`
	} `yaml:"archive"`
}

// applyYAMLFile reads path and exports every non-empty value as its env
// variable, unless that variable is already set.
func applyYAMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	for key, val := range fc.envPairs() {
		setDefaultEnv(key, val)
	}
	return nil
}

func (fc fileConfig) envPairs() map[string]string {
	pairs := map[string]string{
		"PORT":             fc.Server.Port,
		"ENV":              fc.Server.Env,
		"OPENAI_API_KEY":   fc.LLM.OpenAI.APIKey,
		"OPENAI_MODEL":     fc.LLM.OpenAI.Model,
		"OPENAI_BASE_URL":  fc.LLM.OpenAI.BaseURL,
		"GROQ_API_KEY":     fc.LLM.Groq.APIKey,
		"GROQ_MODEL":       fc.LLM.Groq.Model,
		"GROQ_BASE_URL":    fc.LLM.Groq.BaseURL,
		"DATABASE_URL":     fc.Database.URL,
		"FEEDBACK_ARCHIVE": fc.Archive.Kind,
		"LOCAL_STORE_DIR":  fc.Archive.Local.Dir,
		"AWS_REGION":       fc.Archive.S3.Region,
		"S3_BUCKET":        fc.Archive.S3.Bucket,
		"S3_PREFIX":        fc.Archive.S3.Prefix,
		"MINIO_ENDPOINT":   fc.Archive.Minio.Endpoint,
		"MINIO_ACCESS_KEY": fc.Archive.Minio.AccessKey,
		"MINIO_SECRET_KEY": fc.Archive.Minio.SecretKey,
		"MINIO_BUCKET":     fc.Archive.Minio.Bucket,
	}
	if fc.LLM.TimeoutSeconds > 0 {
		pairs["LLM_TIMEOUT_SECONDS"] = fmt.Sprintf("%d", fc.LLM.TimeoutSeconds)
	}
	if fc.Archive.Minio.UseSSL != nil {
		pairs["MINIO_USE_SSL"] = fmt.Sprintf("%t", *fc.Archive.Minio.UseSSL)
	}
	return pairs
}

func setDefaultEnv(key, val string) {
	if strings.TrimSpace(val) == "" {
		return
	}
	if _, ok := os.LookupEnv(key); ok {
		return
	}
	os.Setenv(key, val)
}
