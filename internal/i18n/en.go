package i18n

var enMessages = &Messages{
	AppTitle: "podtui",
	Scanning: "Scanning for image declarations...",
	ScanFail: "Scan failed",
	NoItems:  "No image declarations found",
	Quit:     "quit",
	Back:     "back",
	Help:     "help",
	Search:   "search",
	Export:   "export log",

	ViewContainers:  "By container name",
	ViewImages:      "By image name",
	ViewFolders:     "By folder",
	ViewDockerfiles: "By Dockerfile",
	ViewMakefiles:   "By Makefile",

	Selected:    "selected",
	SelectAll:   "select all",
	Copied:      "Copied to clipboard",
	Expand:      "details",
	Rebuild:     "rebuild",
	NothingToDo: "Nothing selected to rebuild",

	StatusPending: "Pending",
	StatusRunning: "Running",
	StatusDone:    "Done",
	StatusFailed:  "Failed",

	JobLabel:       "Job:",
	StatusLabel:    "Status:",
	ImageLabel:     "Image:",
	ContainerLabel: "Container:",
	SourceLabel:    "Source:",
	QueueDone:      "Rebuild queue finished",
	QueueCancelled: "Rebuild queue cancelled",
	Exported:       "Exported rebuild log to",
	NoMatches:      "No matches",

	ViewOptionsTitle: "View Options (Enter=select, Esc=close)",
	WorkQueueTitle:   "Work Queue (Esc=close)",
	ExportTitle:      "Export rebuild log",
	ExportHint:       "Relative path only (Enter=write, Esc=cancel)",

	CreatedLabel:    "Created:",
	PulledLabel:     "Pulled:",
	DockerfileLabel: "Dockerfile:",
	MakefileLabel:   "Makefile:",
}
