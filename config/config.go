package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		BodyLimit  int    `default:"10485760" env:"APP_BODY_LIMIT"`
		// публичная ссылка на опубликованный тест
		PublishedPathPrefix string `default:"/published/" env:"APP_PUBLISHED_PATH_PREFIX"`
	}
	Latency struct {
		Enabled            *bool `default:"false" env:"LATENCY_ENABLED"`
		ListMs             int   `default:"300" env:"LATENCY_LIST_MS"`
		CountMs            int   `default:"200" env:"LATENCY_COUNT_MS"`
		CreateMs           int   `default:"500" env:"LATENCY_CREATE_MS"`
		CandidatesMs       int   `default:"400" env:"LATENCY_CANDIDATES_MS"`
		AssessmentCreateMs int   `default:"1500" env:"LATENCY_ASSESSMENT_CREATE_MS"`
	}
	Database struct {
		Driver         string `default:"sqlite" env:"DB_DRIVER"` // sqlite | postgres
		SqlitePath     string `default:"talentflow.db" env:"DB_SQLITE_PATH"`
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"talentflow" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Seed struct {
		Enabled    *bool `default:"true" env:"SEED_ENABLED"`
		Jobs       int   `default:"25" env:"SEED_JOBS"`
		Candidates int   `default:"1000" env:"SEED_CANDIDATES"`
		RandSeed   int64 `default:"0" env:"SEED_RAND_SEED"`
	}
	YandexGPT struct {
		IAMToken  string `default:"" env:"YANDEX_GPT_IAM_TOKEN"`
		CatalogID string `default:"" env:"YANDEX_GPT_CATALOG_ID"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"talentflow" env:"S3_BUCKET_NAME"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Notify struct {
		// адрес рекрутера для уведомлений о новых ответах на тесты
		RecruiterEmail string `default:"" env:"NOTIFY_RECRUITER_EMAIL"`
	}
	ErrNotify struct {
		Addr string `default:"" env:"ERR_NOTIFY_ADDR"`
	}
	Swagger struct {
		FilePath string `default:"./docs/swagger.json" env:"SWAGGER_FILE_PATH"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
