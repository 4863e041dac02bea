package parameter

// LogFile is the debug log destination, relative to the working directory
const LogFile = "logs/navsim.log"
