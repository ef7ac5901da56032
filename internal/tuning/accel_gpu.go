//go:build gpu

package tuning

// AcceleratedBuild is true when the binary was built with the 'gpu' tag.
const AcceleratedBuild = true
