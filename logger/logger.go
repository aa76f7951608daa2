// Package logger provides adapters for popular logger libraries to work with btreeslab's Logger interface.
//
// The adapters allow you to use your existing logger with btreeslab without writing boilerplate.
// Note that the standard library's slog.Logger already implements btreeslab.Logger directly.
//
// Example with zap:
//
//	import (
//	    btreeslab "github.com/timothee-haudebourg/btree-slab"
//	    "github.com/timothee-haudebourg/btree-slab/logger"
//	    "go.uber.org/zap"
//	)
//
//	func main() {
//	    zapLogger, _ := zap.NewProduction()
//
//	    m := btreeslab.New[int, string](
//	        btreeslab.WithLogger(logger.NewZap(zapLogger)),
//	    )
//	    m.Insert(1, "one")
//	}
package logger
