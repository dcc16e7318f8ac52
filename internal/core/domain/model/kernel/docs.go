// Package kernel holds the value objects shared by the order aggregate and the
// adapters: geographic stops and fares.
//
// Value objects are immutable and must be obtained through their constructors;
// the zero value of each type fails Validate.
package kernel
