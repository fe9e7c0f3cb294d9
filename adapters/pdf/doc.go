// Package reportpdf turns assembled HTML documents into PDF bytes.
//
// Rendering goes through an ordered Chain of strategies. SessionStrategy drives
// a remote browser over the DevTools protocol, HTTPStrategy posts the document
// to a stateless rendering endpoint, and LocalStrategy writes a simplified
// document in-process. The first strategy that returns output wins; failures
// are logged and recorded as attempts. When every strategy fails the chain
// returns an error of kind report.KindRenderExhausted wrapping an
// ExhaustedError.
//
// NewChain uses only LocalStrategy when no token is configured.
package reportpdf
