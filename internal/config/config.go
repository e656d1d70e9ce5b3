package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 전역 설정 구조체(config/config.yaml과 1:1 매칭)
type Config struct {
	Server     ServerConfig              `mapstructure:"server"`     // 서버 설정
	Database   DatabaseConfig            `mapstructure:"database"`   // PostgreSQL 설정
	OpenAPI    OpenAPIConfig             `mapstructure:"openapi"`    // 공공데이터포털 설정
	Geocode    GeocodeConfig             `mapstructure:"geocode"`    // 좌표 보정(카카오) 설정
	Sync       SyncConfig                `mapstructure:"sync"`       // 동기화 공통 설정
	Categories map[string]CategoryConfig `mapstructure:"categories"` // 카테고리별 원천 설정
}

// ServerConfig 서버 설정
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 서비스 포트
	Mode string `mapstructure:"mode"` // Gin 모드: debug/release/test
}

// DatabaseConfig PostgreSQL 설정
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 연결 DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 최대 연결 수
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 최대 유휴 연결 수
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 연결 최대 수명
}

// OpenAPIConfig 공공데이터포털(data.go.kr) 공통 설정
type OpenAPIConfig struct {
	ServiceKey   string `mapstructure:"service_key"`    // 인증키(.env의 DATA_GO_KR_API_KEY로 덮어씀)
	Timeout      int    `mapstructure:"timeout"`        // 요청 타임아웃(초)
	RetryCount   int    `mapstructure:"retry_count"`    // 페이지 재시도 횟수
	RetryDelayMs int    `mapstructure:"retry_delay_ms"` // 재시도 간 대기(ms)
	Proxy        string `mapstructure:"proxy"`          // 프록시 주소(옵션)
}

// GeocodeConfig 카카오 로컬 API 좌표 보정 설정
type GeocodeConfig struct {
	BaseURL       string `mapstructure:"base_url"`        // API 기본 주소
	RestAPIKey    string `mapstructure:"rest_api_key"`    // REST API 키(.env의 KAKAO_REST_API_KEY로 덮어씀)
	Timeout       int    `mapstructure:"timeout"`         // 요청 타임아웃(초)
	Concurrency   int    `mapstructure:"concurrency"`     // 동시 요청 상한
	MinIntervalMs int    `mapstructure:"min_interval_ms"` // 요청 간 최소 간격(ms)
	RetryCount    int    `mapstructure:"retry_count"`     // 재시도 횟수
}

// SyncConfig 동기화 공통 설정
type SyncConfig struct {
	BatchSize int `mapstructure:"batch_size"` // upsert 배치 크기(=배치 내 동시 실행 상한)
}

// CategoryConfig 카테고리별 원천 데이터 설정
type CategoryConfig struct {
	Mode        string `mapstructure:"mode"`          // 원천 모드: csv/api
	CSVPath     string `mapstructure:"csv_path"`      // CSV 파일 경로(csv 모드)
	SkipRows    int    `mapstructure:"skip_rows"`     // 헤더 이전 스킵 라인 수
	BaseURL     string `mapstructure:"base_url"`      // API 기본 주소(api 모드)
	Path        string `mapstructure:"path"`          // API 엔드포인트 경로
	NumOfRows   int    `mapstructure:"num_of_rows"`   // 페이지당 행 수
	PageDelayMs int    `mapstructure:"page_delay_ms"` // 페이지 간 대기(ms)
	MaxPages    int    `mapstructure:"max_pages"`     // 최대 페이지 수(0이면 무제한, 테스트용 캡)
}

// LoadConfig 설정 파일(config/config.yaml) 로드, 민감 항목은 .env로 덮어씀
func LoadConfig() (*Config, error) {
	// .env가 있으면 로드(없어도 무방)
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("설정 파일 읽기 실패: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("설정 파일 파싱 실패: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// overrideFromEnv 민감 설정을 환경 변수로 덮어씀(우선순위 env > yaml)
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DATA_GO_KR_API_KEY"); v != "" {
		cfg.OpenAPI.ServiceKey = v
	}
	if v := os.Getenv("KAKAO_REST_API_KEY"); v != "" {
		cfg.Geocode.RestAPIKey = v
	}
	if v := os.Getenv("OPEN_API_PROXY"); v != "" {
		cfg.OpenAPI.Proxy = v
	}
}

// Category 카테고리별 설정 조회(없으면 zero value)
func (c *Config) Category(name string) CategoryConfig {
	if cc, ok := c.Categories[name]; ok {
		return cc
	}
	return CategoryConfig{}
}
