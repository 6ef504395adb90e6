package logger

import (
	"time"

	"go.uber.org/zap"
)

// RequestID is the X-Request-ID of the current request.
func RequestID(v string) zap.Field { return zap.String("request_id", v) }

func Method(v string) zap.Field { return zap.String("method", v) }

func Path(v string) zap.Field { return zap.String("path", v) }

func Status(v int) zap.Field { return zap.Int("status", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

func UserID(v int) zap.Field { return zap.Int("user_id", v) }

func CompanyID(v int) zap.Field { return zap.Int("company_id", v) }

func Module(v string) zap.Field { return zap.String("module", v) }

// Component names the package or subsystem emitting the entry.
func Component(v string) zap.Field { return zap.String("component", v) }

// Op names the operation inside a component.
func Op(v string) zap.Field { return zap.String("op", v) }

// Reason is the denial reason of a rejected state change.
func Reason(v string) zap.Field { return zap.String("reason", v) }

func Err(err error) zap.Field { return zap.Error(err) }
