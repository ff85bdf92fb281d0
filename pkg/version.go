package daysay

// Version is the current release of the daysay module.
const Version = "0.3.0"
