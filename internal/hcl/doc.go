// Package hcl provides the HCL implementation of config.Loader. It parses
// maze blocks with hclparse and gohcl and binds coordinate lists through
// go-cty.
package hcl
