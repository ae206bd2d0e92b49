// Package bootstrap assembles and runs the ISV debugger project pipeline.
//
// CommandBuilder deterministically constructs the seven sfdx command
// descriptors from a PipelineContext. Runner feeds those descriptors to an
// executor in order, stopping at the first failure, and performs the
// surrounding file system work (package manifest, installed package
// records, temporary directory cleanup).
package bootstrap
