package clients

import "time"

const (
	PROD_TIMEOUT = 10 * time.Second
	DEV_TIMEOUT  = 60 * time.Second
	USER_AGENT   = "sentiview-client/1.0 (+https://github.com/spacesedan/sentiview)"

	LOGIN_PATH     = "/api/auth/login"
	SIGNUP_PATH    = "/api/auth/signup"
	PROFILE_PATH   = "/api/user/profile"
	HEALTH_PATH    = "/health"
	SENTIMENT_PATH = "/api/sentiment"
	BATCH_PATH     = "/api/batch"
)
