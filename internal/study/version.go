package study

// Version is the biostudy release version.
const Version = "0.1.0"
