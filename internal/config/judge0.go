package config

import "time"

type Judge0Config struct {
	BaseURL       string
	Timeout       time.Duration
	CPUTimeLimit  float64
	MemoryLimitKB int
}

func NewJudge0Config() *Judge0Config {
	return &Judge0Config{
		BaseURL:       getEnv("JUDGE0_URL", "http://localhost:2358"),
		Timeout:       time.Duration(getIntEnv("JUDGE0_TIMEOUT_SEC", 30)) * time.Second,
		CPUTimeLimit:  getFloatEnv("JUDGE0_CPU_TIME_LIMIT", 5),
		MemoryLimitKB: getIntEnv("JUDGE0_MEMORY_LIMIT_KB", 128000),
	}
}

type GradingConfig struct {
	// MaxParallelCases bounds how many test cases of one submission run at once
	MaxParallelCases int

	// RequestTimeout bounds one /execute request, cases still running then fail
	RequestTimeout time.Duration
}

func NewGradingConfig() *GradingConfig {
	parallel := getIntEnv("GRADING_MAX_PARALLEL_CASES", 1)
	if parallel < 1 {
		parallel = 1
	}
	return &GradingConfig{
		MaxParallelCases: parallel,
		RequestTimeout:   time.Duration(getIntEnv("GRADING_REQUEST_TIMEOUT_SEC", 180)) * time.Second,
	}
}
