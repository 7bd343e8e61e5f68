package parser

import "github.com/sirupsen/logrus"

type htmlParserConfig struct {
	logger  *logrus.Logger
	context string
}

// Option configures a tokenizer or tree constructor.
type Option func(*htmlParserConfig)

// WithLogger sets the logger parse errors and state transitions are written to.
// Parse errors are logged at debug level and state transitions at trace level.
func WithLogger(l *logrus.Logger) Option {
	return func(c *htmlParserConfig) {
		c.logger = l
	}
}

// WithInitialContext starts tokenization as if the start tag for tagName had
// just been emitted, e.g. "textarea" starts in the RCDATA state and ends at
// the first </textarea>.
func WithInitialContext(tagName string) Option {
	return func(c *htmlParserConfig) {
		c.context = tagName
	}
}

func newHTMLParserConfig(opts []Option) htmlParserConfig {
	c := htmlParserConfig{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = logrus.StandardLogger()
	}
	return c
}
