/*
Package sqldataset provides implementations of dataset.Dataset
that use SQL databases as backends.

The dataset reads samples from a single table with a column
per feature, named after it:
  * Discrete features are stored as text
  * Continuous features are stored as real numbers
  * NULL stands for an undefined value

SQLite3 and PostgreSQL databases are supported.
*/
package sqldataset
