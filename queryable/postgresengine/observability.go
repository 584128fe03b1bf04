package postgresengine

import (
	"math"
	"time"
)

// logQueryWithDuration logs SQL queries with execution time at debug level if the logger is configured.
func (c Client) logQueryWithDuration(
	sqlQuery string,
	action string,
	duration time.Duration,
	args ...any,
) {

	if c.logger != nil {
		allArgs := []any{logAttrDurationMS, c.toMilliseconds(duration), logAttrQuery, sqlQuery}
		allArgs = append(allArgs, args...)
		c.logger.Debug(logMsgSQLExecuted+action, allArgs...)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (c Client) logOperation(action string, args ...any) {
	if c.logger != nil {
		c.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical failures at warn level if the logger is configured.
func (c Client) logWarn(message string, err error) {
	if c.logger != nil {
		c.logger.Warn(message, logAttrError, err.Error())
	}
}

// logError logs error information at the error level if the logger is configured.
func (c Client) logError(message string, err error, args ...any) {
	if c.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		c.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (c Client) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
