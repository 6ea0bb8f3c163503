// Package config declares the command line and config file surface of teautil.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mazrean/teautil/log"
)

const fileName = ".teautil.json"

type Config struct {
	Version  kong.VersionFlag `kong:"short='v',help='Show version and exit.'"`
	Config   kong.ConfigFlag  `kong:"short='c',help='Load configuration from a file.'"`
	LogLevel string           `kong:"short='l',default='info',enum='debug,info,warn,error,silent',help='Log level',env='TEAUTIL_LOG_LEVEL'"`
	LogFile  string           `kong:"optional,type='path',help='Append logs to this file instead of stderr',env='TEAUTIL_LOG_FILE'"`

	Format    FormatCmd    `kong:"cmd,help='Re-encode JSON or protobuf documents as canonical JSON.'"`
	URLEncode URLEncodeCmd `kong:"cmd,name='urlencode',help='Percent-encode text per RFC 3986.'"`
	Form      FormCmd      `kong:"cmd,help='Serialize KEY=VALUE pairs as a form string.'"`
	Serve     ServeCmd     `kong:"cmd,help='Serve line-delimited JSON requests on stdin.'"`
}

type FormatCmd struct {
	Files       []string `kong:"arg,optional,help='Input files. Reads stdin when empty or -. Files ending in .zst are zstd-compressed.'"`
	Input       string   `kong:"short='i',default='json',enum='json,proto',help='Input encoding',env='TEAUTIL_FORMAT_INPUT'"`
	Output      string   `kong:"short='o',default='json',enum='json,proto',help='Output encoding',env='TEAUTIL_FORMAT_OUTPUT'"`
	Concurrency int      `kong:"short='j',default='4',help='Number of files decoded at once',env='TEAUTIL_FORMAT_CONCURRENCY'"`
}

type URLEncodeCmd struct {
	Text string `kong:"arg,help='Text to encode'"`
}

type FormCmd struct {
	Pairs []string `kong:"arg,optional,help='Fields as KEY=VALUE'"`
}

// Fields splits the pairs at their first '='. A later duplicate key wins.
func (f *FormCmd) Fields() (map[string]string, error) {
	fields := make(map[string]string, len(f.Pairs))
	for _, pair := range f.Pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q: want KEY=VALUE", pair)
		}
		fields[key] = value
	}

	return fields, nil
}

type ServeCmd struct {
	ResponseBuffer int `kong:"default='100',help='Number of responses buffered before the writer blocks',env='TEAUTIL_SERVE_RESPONSE_BUFFER'"`
}

type Version struct {
	Version  string
	Revision string
}

// Paths returns the config files read on startup: the working directory first,
// then the home directory. Keys are flag names in snake_case, so --log-level
// is configured as "log_level".
func Paths(logger log.Logger) []string {
	var configPaths []string
	wd, err := os.Getwd()
	if err == nil {
		configPaths = append(configPaths, filepath.Join(wd, fileName))
	} else {
		logger.Warnf("failed to get working directory. ignoring config file in working directory")
	}

	userHomeDir, err := os.UserHomeDir()
	if err == nil {
		configPaths = append(configPaths, filepath.Join(userHomeDir, fileName))
	} else {
		logger.Warnf("failed to get user home directory. ignoring config file in user home directory")
	}

	return configPaths
}

// NewParser builds the kong parser for cli, which must embed Config.
// Values in configPaths are looked up by snake_case flag name. Command line
// flags take precedence over them.
func NewParser(cli any, version Version, configPaths []string, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("teautil"),
		kong.Description("Canonical JSON, URL and form encoding helpers"),
		kong.Configuration(kong.JSON, configPaths...),
		kong.Vars{"version": fmt.Sprintf("%s (%s)", version.Version, version.Revision)},
		kong.UsageOnError(),
	}, options...)

	parser, err := kong.New(cli, options...)
	if err != nil {
		return nil, fmt.Errorf("create parser: %w", err)
	}

	return parser, nil
}
