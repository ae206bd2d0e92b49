package bootstrap

import "strings"

// Step enumerates the bootstrap pipeline steps.
type Step int

// Pipeline steps in execution order.
const (
	StepCreateProject Step = iota + 1
	StepConfigureProject
	StepRetrieveOrgSource
	StepConvertOrgSource
	StepListInstalledPackages
	StepRetrievePackagesSource
	StepConvertPackageSource
)

// PipelineSteps lists every step in the order the runner executes them.
var PipelineSteps = []Step{
	StepCreateProject,
	StepConfigureProject,
	StepRetrieveOrgSource,
	StepConvertOrgSource,
	StepListInstalledPackages,
	StepRetrievePackagesSource,
	StepConvertPackageSource,
}

// Relative project paths handed verbatim to sfdx. Always slash separated.
const (
	MetadataTemporaryDirectory = ".sfdx/isvdebugger/mdapitmp"
	InstalledPackagesDirectory = ".sfdx/tools/installed-packages"
	OrgSourceDestination       = "force-app"
	PackagesDestination        = "packages"
	packageManifestFileName    = "package.xml"
	unpackagedDirectoryName    = "unpackaged"
	installedPackageFileName   = "installed-package.json"
	sfdxPathSeparator          = "/"
)

var stepNames = map[Step]string{
	StepCreateProject:          "create-project",
	StepConfigureProject:       "configure-project",
	StepRetrieveOrgSource:      "retrieve-org-source",
	StepConvertOrgSource:       "convert-org-source",
	StepListInstalledPackages:  "list-installed-packages",
	StepRetrievePackagesSource: "retrieve-packages-source",
	StepConvertPackageSource:   "convert-package-source",
}

// String returns the stable step identifier.
func (step Step) String() string {
	if name, known := stepNames[step]; known {
		return name
	}
	return "unknown"
}

func packageManifestPath() string {
	return joinSalesforcePath(MetadataTemporaryDirectory, packageManifestFileName)
}

func unpackagedSourcePath() string {
	return joinSalesforcePath(MetadataTemporaryDirectory, unpackagedDirectoryName)
}

func retrievedPackagePath(packageName string) string {
	return joinSalesforcePath(MetadataTemporaryDirectory, PackagesDestination, packageName)
}

func convertedPackagePath(packageName string) string {
	return joinSalesforcePath(PackagesDestination, packageName)
}

func joinSalesforcePath(segments ...string) string {
	return strings.Join(segments, sfdxPathSeparator)
}
