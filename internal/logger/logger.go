// Package logger configures the process-wide zap logger.
package logger

import "go.uber.org/zap"

// New builds a sugared logger. Debug mode switches to the development
// encoder with debug-level output.
func New(debug bool) (*zap.SugaredLogger, error) {
	var (
		log *zap.Logger
		err error
	)
	if debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}
