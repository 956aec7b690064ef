// Package device models browsers and screens seen by the storefront.
package device
