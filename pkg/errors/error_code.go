package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeInvalidThreshold     ErrorCode = 103
	ErrCodeInvalidRange         ErrorCode = 104
	ErrCodeMissingParameter     ErrorCode = 105
	ErrCodeInvalidBalance       ErrorCode = 106
	ErrCodeInvalidGranularity   ErrorCode = 107
	ErrCodeInvalidVersion       ErrorCode = 108

	// Data errors (200-299)
	ErrCodeInvalidBar       ErrorCode = 200
	ErrCodeUnorderedSeries  ErrorCode = 201
	ErrCodeInsufficientData ErrorCode = 202
	ErrCodeMismatchedLength ErrorCode = 203
	ErrCodeDataNotFound     ErrorCode = 204
	ErrCodeEmptyDataset     ErrorCode = 205

	// Strategy errors (300-399)
	ErrCodeStrategyNotFound      ErrorCode = 300
	ErrCodeStrategyAlreadyExists ErrorCode = 301
	ErrCodeStrategyConfigError   ErrorCode = 302
	ErrCodeUnsupportedStrategy   ErrorCode = 303

	// Backtest errors (400-499)
	ErrCodeBacktestFailed       ErrorCode = 400
	ErrCodeBacktestCancelled    ErrorCode = 401
	ErrCodeBacktestNoStrategies ErrorCode = 402

	// Storage errors (500-599)
	ErrCodeStorageInitFailed  ErrorCode = 500
	ErrCodeStorageWriteFailed ErrorCode = 501
	ErrCodeStorageQueryFailed ErrorCode = 502

	// Market data errors (600-699)
	ErrCodeMarketDataFetchFailed ErrorCode = 600
	ErrCodeMarketDataWriteFailed ErrorCode = 601
	ErrCodeMarketDataParseFailed ErrorCode = 602
	ErrCodeInvalidTimespan       ErrorCode = 603
	ErrCodeInvalidProvider       ErrorCode = 604
)
