package http

// Expose the signature verifier to the external test package
var VerifySlackSignature = verifySlackSignature
