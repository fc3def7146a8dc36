// Package config loads declarative logger configuration and builds
// [chipper.Logger] instances from it.
//
// A configuration document is YAML:
//
//	handlers:
//	  - name: sql
//	    tags: [sql, query]
//	    target:
//	      filename: sql.log
//	    formatter:
//	      tag_delimiter: "|"
//	default:
//	  target:
//	    stdout: true
//	delivery: always
//
// [Load] or [Parse] produce a [Config]; [Config.Build] validates every tag
// token and template and constructs the logger. Validation failures are
// fatal and wrap [ErrConfig], so misconfiguration is caught at startup
// rather than at the first emission.
//
// [Options] integrates with CLI applications via [github.com/spf13/pflag]
// flags and [github.com/spf13/cobra] shell completions. [Schema] describes
// the document as JSON Schema for editor tooling.
package config
