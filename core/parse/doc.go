// Package parse decodes tool-call arguments produced by language models.
// Models frequently emit almost-JSON: single quotes, unquoted keys, trailing
// commas, truncated objects or schema-style {"type": ..., "value": ...}
// envelopes. [ParseStringAs] tries strict decoding first, then automatic JSON
// repair, then schema unwrapping, before reporting an error.
package parse
